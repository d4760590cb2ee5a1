package model

// CollectionDescriptor is one entry of a listCollections reply
type CollectionDescriptor struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type,omitempty" bson:"type,omitempty"`
}

// HasCollection reports whether any descriptor carries the given name
func HasCollection(descriptors []CollectionDescriptor, name string) bool {
	for _, d := range descriptors {
		if d.Name == name {
			return true
		}
	}
	return false
}

// CleanResult describes the outcome of one collection clean
type CleanResult struct {
	Model      string `json:"model"`
	Collection string `json:"collection"`
	Database   string `json:"database"`
	Dropped    bool   `json:"dropped"`
}
