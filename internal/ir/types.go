package ir

import (
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/ekcc-lang/ekcc/internal/types"
)

// lowerType maps a source type to its IR representation: int/cint to a
// 32-bit integer, bool to a single bit, float to a 32-bit float, void to
// void, and any reference to a pointer over the lowered pointee. The
// noalias modifier is not part of the type itself — it is attached to
// the IR parameter separately, where one exists.
func lowerType(t types.Type) irtypes.Type {
	if t.Ref {
		return irtypes.NewPointer(lowerScalar(t.Kind))
	}
	return lowerScalar(t.Kind)
}

func lowerScalar(k types.Kind) irtypes.Type {
	switch k {
	case types.Int, types.CInt:
		return irtypes.I32
	case types.Bool:
		return irtypes.I1
	case types.Float:
		return irtypes.Float
	case types.Void:
		return irtypes.Void
	default:
		panic("ir: cannot lower invalid scalar kind")
	}
}
