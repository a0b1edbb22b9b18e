package repository

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// parseMoney reads a decimal stored as a string attribute. Empty means zero.
func parseMoney(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func numberAttr(d decimal.Decimal) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: d.String()}
}

// decimalAttr reads a numeric attribute without going through float64.
func decimalAttr(item map[string]types.AttributeValue, name string) (decimal.Decimal, error) {
	av, ok := item[name]
	if !ok {
		return decimal.Zero, nil
	}
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		return decimal.NewFromString(v.Value)
	case *types.AttributeValueMemberS:
		return decimal.NewFromString(v.Value)
	default:
		return decimal.Zero, fmt.Errorf("attribute %s: unexpected type %T", name, av)
	}
}

func stringSetContains(item map[string]types.AttributeValue, name, value string) bool {
	ss, ok := item[name].(*types.AttributeValueMemberSS)
	if !ok {
		return false
	}
	for _, v := range ss.Value {
		if v == value {
			return true
		}
	}
	return false
}

func isConditionalCheckFailed(err error) (*types.ConditionalCheckFailedException, bool) {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return cfe, true
	}
	return nil, false
}
