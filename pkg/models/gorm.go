package models

// ModelsToAutoMigrate returns the models managed by the catalog schema.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Product{},
		&Project{},
	}
}
