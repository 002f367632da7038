package curriculum

import "fmt"

// FormatError reports an import document that does not satisfy the required
// shape. Field is the path of the missing or malformed value so the author
// knows what to fix; Detail carries the underlying structural diagnostic.
type FormatError struct {
	Field  string
	Detail string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid curriculum format: %s", e.Detail)
	}
	return fmt.Sprintf("invalid curriculum format: %s: %s", e.Field, e.Detail)
}
