package outline

// Section is a heading with the headings nested beneath it.
type Section struct {
	Entry    `yaml:",inline"`
	Children []*Section `json:"children,omitempty" yaml:"children,omitempty"`
}

// Nest turns an ordered flat outline into a forest. Each entry becomes a
// child of the nearest preceding entry with a smaller level rank.
func Nest(entries []Entry) []*Section {
	root := &Section{}
	stack := []*Section{root}
	for _, e := range entries {
		s := &Section{Entry: e}
		for len(stack) > 1 && stack[len(stack)-1].Level.Rank() >= e.Level.Rank() {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, s)
		stack = append(stack, s)
	}
	return root.Children
}
