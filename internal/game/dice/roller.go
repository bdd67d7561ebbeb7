package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count, every die is in [1, expr.Sides]
// and result.Total() == sum(result.Dice) + expr.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
		Mode:       ModeSum,
	}
}

// RollExpr parses notation and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or an error wrapping ErrInvalidNotation.
func RollExpr(notation string, src Source) (RollResult, error) {
	e, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// RollAdvantage rolls two independent d20s and keeps the higher.
//
// Postcondition: len(Dice) == 2; Total() == max(Dice).
func RollAdvantage(src Source) RollResult {
	return rollPair(src, "2d20 (advantage)", ModeAdvantage)
}

// RollDisadvantage rolls two independent d20s and keeps the lower.
//
// Postcondition: len(Dice) == 2; Total() == min(Dice).
func RollDisadvantage(src Source) RollResult {
	return rollPair(src, "2d20 (disadvantage)", ModeDisadvantage)
}

func rollPair(src Source, label string, mode Mode) RollResult {
	return RollResult{
		Expression: label,
		Dice:       []int{src.Intn(20) + 1, src.Intn(20) + 1},
		Mode:       mode,
	}
}
