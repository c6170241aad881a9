package entity

// Attribute is a named, user-owned recipe classifier. Tags and ingredients
// share the shape and differ only in which table and join table back them.
type Attribute struct {
	ID     int64
	Name   string
	UserID int64
}
