package model

// ObjectID is a non-owning handle to a world entity. Zero means "nobody".
type ObjectID uint32

// Valid reports whether the handle refers to anything at all.
// Whether the entity is still alive is answered by the world registry.
func (id ObjectID) Valid() bool { return id != 0 }
