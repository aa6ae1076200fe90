package model

// Skill is a catalog entry referenced by project tech stacks. Skills are
// shared across projects and never owned by one.
type Skill struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Category *string `json:"category"`
}
