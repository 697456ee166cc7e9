package asm

// The interpreter stack holds one frame per active macro expansion: the
// evaluated argument array of the call. &N interpolations resolve against
// the top frame only, so arguments never leak between nested expansions.

func (a *assembler) interpPush(args *node) {
	switch typeOf(args) {
	case nodeUndef, nodeArray:
		a.interpStack = append(a.interpStack, args)
	default:
		a.fatalError(a.line, "internal: pushing non-array onto interp stack")
	}
}

func (a *assembler) interpPop() {
	if len(a.interpStack) == 0 {
		a.fatalError(a.line, "internal: popping off empty interp stack")
		return
	}
	a.interpStack = a.interpStack[:len(a.interpStack)-1]
}

// interpGet returns the index-th positional argument of the innermost
// macro expansion, 1-indexed.
func (a *assembler) interpGet(index int64) *node {
	if len(a.interpStack) == 0 {
		a.addError(a.line, "no positional variables on stack")
		return nil
	}
	args := a.interpStack[len(a.interpStack)-1]
	n := int64(arrayCount(args))
	if index < 1 || index > n {
		a.addError(a.line, "invalid positional variable: %d", index)
		return nil
	}
	return args.children[index-1]
}
