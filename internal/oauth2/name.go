package oauth2

import (
	"fmt"

	"github.com/authsrv/oauth2-userinfo/internal/oauth2/types"
	"github.com/google/cel-go/cel"
)

// NameResolver derives a display name from the raw userinfo attributes via a
// CEL expression. It covers providers whose display name is not a single
// attribute, e.g. `attributes.given_name + " " + attributes.family_name`.
// The expression is compiled once at construction.
type NameResolver struct {
	prg cel.Program
}

// NewNameResolver compiles the given CEL expression. The expression sees a
// single variable `attributes` holding the raw userinfo attributes and must
// evaluate to a string.
func NewNameResolver(expression string) (*NameResolver, error) {
	env, err := cel.NewEnv(
		cel.Variable("attributes", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &NameResolver{prg: prg}, nil
}

// Resolve evaluates the expression against the given attributes.
func (n *NameResolver) Resolve(attributes types.RawAttributes) (string, error) {
	out, _, err := n.prg.Eval(map[string]any{
		"attributes": map[string]any(attributes),
	})
	if err != nil {
		return "", fmt.Errorf("failed to evaluate CEL expression for name: %w", err)
	}

	name, ok := out.Value().(string)
	if !ok {
		return "", fmt.Errorf("%w: CEL expression for name did not evaluate to a string: %T",
			types.ErrInvalidAttributeType, out.Value())
	}

	return name, nil
}
