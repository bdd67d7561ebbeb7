package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
func (r *Roller) Roll(expr Expression) RollResult {
	return r.log(Roll(expr, r.src))
}

// RollExpr parses notation and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or an error wrapping ErrInvalidNotation.
func (r *Roller) RollExpr(notation string) (RollResult, error) {
	e, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// RollAdvantage rolls 2d20 keeping the higher die.
func (r *Roller) RollAdvantage() RollResult {
	return r.log(RollAdvantage(r.src))
}

// RollDisadvantage rolls 2d20 keeping the lower die.
func (r *Roller) RollDisadvantage() RollResult {
	return r.log(RollDisadvantage(r.src))
}

func (r *Roller) log(result RollResult) RollResult {
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Stringer("mode", result.Mode),
		zap.Int("total", result.Total()),
	)
	return result
}
