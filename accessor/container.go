package accessor

import (
	"github.com/teranos/resgen/errors"
)

// Container names the generated class and its namespace
type Container struct {
	Class     string
	Namespace string
}

// NewContainer validates the container class name and namespace. Either one
// failing aborts the run: a container that cannot be named holds nothing.
func NewContainer(baseName, namespace string, oracle Oracle) (Container, error) {
	class := baseName
	if !oracle.IsValidIdentifier(class) {
		fixed, ok := Sanitize(class, false, oracle)
		if !ok {
			return Container{}, errors.WithHint(
				errors.Wrap(errors.ErrInvalidIdentifier, Message(MsgInvalidIdentifier, baseName)),
				"rename the resource file so its base name starts with a letter")
		}
		class = fixed
	}

	ns, ok := SanitizeNamespace(namespace, oracle)
	if !ok {
		return Container{}, errors.WithHint(
			errors.Wrap(errors.ErrInvalidIdentifier, Message(MsgInvalidNamespace, namespace)),
			"set generate.namespace to a dotted list of identifiers")
	}

	return Container{Class: class, Namespace: ns}, nil
}

// QualifiedName joins namespace and class
func (c Container) QualifiedName() string {
	if c.Namespace == "" {
		return c.Class
	}
	return c.Namespace + "." + c.Class
}
