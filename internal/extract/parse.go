package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-relay/internal/model"
)

// ErrMalformedReply is returned when a reply holds no JSON object.
var ErrMalformedReply = errors.New("model reply is not a JSON object")

// Backticks are written as \x60 because raw strings cannot contain them.
var fencedObjectRegex = regexp.MustCompile("(?s)\x60\x60\x60(?:json)?\\s*({.*})\\s*\x60\x60\x60")

// decodeObject unwraps markdown fences or surrounding prose and decodes the
// first JSON object in reply.
func decodeObject(reply string) (map[string]any, error) {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		if m := fencedObjectRegex.FindStringSubmatch(s); len(m) > 1 {
			s = m[1]
		}
	} else if !strings.HasPrefix(s, "{") {
		first, last := strings.Index(s, "{"), strings.LastIndex(s, "}")
		if first != -1 && last > first {
			s = s[first : last+1]
		}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if obj == nil {
		return nil, ErrMalformedReply
	}
	return obj, nil
}

// ParseOrder decodes an order reply. Missing or mistyped fields fall back
// to their zero values; only a reply without a JSON object fails.
func ParseOrder(reply string) (*model.Order, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return OrderFromMap(obj), nil
}

// OrderFromMap builds an order from decoded JSON with the same defaults as
// ParseOrder: quantities and prices are coerced and never negative.
func OrderFromMap(obj map[string]any) *model.Order {
	order := &model.Order{
		CustomerName:    asString(obj["customerName"]),
		OrderedArticles: []model.OrderedArticle{},
	}
	items, _ := obj["orderedArticles"].([]any)
	for _, item := range items {
		a, _ := item.(map[string]any)
		order.OrderedArticles = append(order.OrderedArticles, model.OrderedArticle{
			ArticleName:  asString(a["articleName"]),
			Quantity:     asQuantity(a["quantity"]),
			PricePerUnit: asNonNegative(a["pricePerUnit"]),
		})
	}
	return order
}

// ParseElementIDs decodes an element-id reply. Numeric IDs are accepted
// and formatted as strings.
func ParseElementIDs(reply string) (*model.ErpElementIDs, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return ElementIDsFromMap(obj), nil
}

// ElementIDsFromMap builds element IDs from decoded JSON.
func ElementIDsFromMap(obj map[string]any) *model.ErpElementIDs {
	return &model.ErpElementIDs{
		CustomerName:    asID(obj["elementIdCustomerName"]),
		ArticleName:     asID(obj["elementIdArticleName"]),
		Quantity:        asID(obj["elementIdQuantity"]),
		PricePerUnit:    asID(obj["elementIdPricePerUnit"]),
		AddItemButton:   asID(obj["elementIdAddItemButton"]),
		SaveOrderButton: asID(obj["elementIdSaveOrderButton"]),
	}
}

// ParseDigest decodes a news digest reply. The probability is clamped to
// 0-100.
func ParseDigest(reply string) (*model.NewsDigest, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	digest := &model.NewsDigest{SummaryBulletPoints: []string{}}
	points, _ := obj["summaryBulletPoints"].([]any)
	for _, p := range points {
		if s := asString(p); s != "" {
			digest.SummaryBulletPoints = append(digest.SummaryBulletPoints, s)
		}
	}
	digest.BreakingNewsProbabilityInPercent = int(math.Min(100, asNonNegative(obj["breakingNewsProbabilityInPercent"])))
	return digest, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asID(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// asQuantity truncates to an int, saturating at MaxInt32.
func asQuantity(v any) int {
	return int(math.Min(math.MaxInt32, asNonNegative(v)))
}

// asNonNegative coerces a JSON number or numeric string. Anything else,
// and negative or non-finite values, become 0.
func asNonNegative(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
