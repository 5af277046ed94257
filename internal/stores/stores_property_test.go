package stores

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"tradermind/internal/models"
	"tradermind/internal/store"
)

func tradeActionGen() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 200),
		gen.Int64Range(0, 90),
	).Map(func(vals []interface{}) models.TradeAction {
		actionType := models.ActionBuy
		if vals[0].(bool) {
			actionType = models.ActionSell
		}
		return models.TradeAction{
			Type:     actionType,
			Price:    vals[1].(float64),
			Quantity: vals[2].(float64),
			Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(vals[3].(int64))),
		}
	})
}

// After any sequence of recorded actions, a trade is active exactly when its
// signed share total is positive.
func TestProperty_IsActiveIffPositiveShares(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("active state tracks net shares through mutations", prop.ForAll(
		func(first models.TradeAction, rest []models.TradeAction) bool {
			ctx := context.Background()
			s := NewTradeStore(store.NewMemoryBackend(), zerolog.Nop())

			trade, err := s.AddTrade(ctx, "PROP", "", first)
			if err != nil {
				t.Logf("AddTrade failed: %v", err)
				return false
			}
			for _, a := range rest {
				trade, err = s.AddAction(ctx, trade.ID, a)
				if err != nil {
					t.Logf("AddAction failed: %v", err)
					return false
				}
				if trade.IsActive != (trade.NetShares() > 0) {
					t.Logf("isActive=%v netShares=%f", trade.IsActive, trade.NetShares())
					return false
				}
			}

			return true
		},
		tradeActionGen(),
		gen.SliceOf(tradeActionGen()),
	))

	properties.TestingRun(t)
}
