package async

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/asyncir/asyncir/ir"
)

// TypeName of the completion token type, printed as !async.token.
const TypeName = "async.token"

// TokenType is the registered ir.Type of completion tokens.
var TokenType ir.Type = tokenType{}

type tokenType struct{}

func (tokenType) Name() string { return TypeName }

// Token represents the point at which one asynchronous operation becomes
// complete. It carries no payload: its identity is its only content, and two
// tokens are the same dependency iff they are the same *Token. A token is
// obtained only as the produced output of an operation (Producer.Done), never
// freestanding, and is immutable once produced.
type Token struct {
	producer ir.Op
}

// newToken creates the completion token for producer. Called exactly once per
// producing operation, from its constructor.
func newToken(producer ir.Op) *Token {
	if producer == nil {
		exceptions.Panicf("async token requires a producing operation")
	}
	return &Token{producer: producer}
}

// Producer returns the operation whose completion this token represents.
func (t *Token) Producer() ir.Op { return t.producer }

// Type returns the registered token type.
func (t *Token) Type() ir.Type { return TokenType }

// String renders the token's canonical textual form, "%t<id>" with the
// producing operation's module id. It is the same name the module printer
// emits, see ResolveToken for the way back.
func (t *Token) String() string { return ir.ValueName(t) }

// ResolveToken resolves a token's canonical printed name (e.g. "%t3") back to
// the token within m. Within the same module the round trip is the identity:
// ResolveToken(m, tok.String()) == tok.
func ResolveToken(m *ir.Module, name string) (*Token, error) {
	digits, ok := strings.CutPrefix(name, "%t")
	if !ok {
		return nil, errors.Errorf("malformed token name %q, expected the form %%t<id>", name)
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return nil, errors.Errorf("malformed token name %q, expected the form %%t<id>", name)
	}
	op := m.OpById(ir.OpId(id))
	if op == nil {
		return nil, errors.Errorf("token name %q does not match any operation in module %q", name, m.Name())
	}
	producer, ok := op.(Producer)
	if !ok {
		return nil, errors.Errorf("operation %s does not produce a token", ir.Describe(op))
	}
	return producer.Done(), nil
}

var _ ir.Value = (*Token)(nil)
var _ fmt.Stringer = (*Token)(nil)
