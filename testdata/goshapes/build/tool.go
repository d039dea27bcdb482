package build

type Tool struct {
	Name string
}
