package ports

type WorkspacePort interface {
	FindRecipes(root string) ([]string, error)
}
