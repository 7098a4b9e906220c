package validators

import "github.com/go-playground/validator/v10"

// formattedErrorsKey holds the messages attached to a node of a formatted tree.
const formattedErrorsKey = "_errors"

// Format renders engine errors as a nested tree: every node has an "_errors"
// list of messages and one child per field on the path to a failure.
//
//	{"_errors": [], "name": {"_errors": ["Required"]}}
//
// Errors reported on the validated value itself land in the root "_errors".
// root is the namespace prefix of errs, see [RootOf].
func Format(errs validator.ValidationErrors, root string) map[string]any {
	tree := newFormatNode()
	for _, fe := range errs {
		node := tree
		for _, segment := range fieldPath(fe.Namespace(), root) {
			child, ok := node[segment].(map[string]any)
			if !ok {
				child = newFormatNode()
				node[segment] = child
			}
			node = child
		}
		node[formattedErrorsKey] = append(node[formattedErrorsKey].([]string), message(fe))
	}
	return tree
}

func newFormatNode() map[string]any {
	return map[string]any{formattedErrorsKey: []string{}}
}
