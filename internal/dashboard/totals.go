package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
)

type ResponsibleTotal struct {
	Name   string
	Amount money.Amount
}

// ResponsibleTotals maps a responsible's display name to a summed amount. It
// keeps names in order of first occurrence and serializes as a JSON object in
// that order.
type ResponsibleTotals []ResponsibleTotal

func (t *ResponsibleTotals) Add(name string, amount money.Amount) {
	for i := range *t {
		if (*t)[i].Name == name {
			(*t)[i].Amount = (*t)[i].Amount.Add(amount)
			return
		}
	}
	*t = append(*t, ResponsibleTotal{Name: name, Amount: amount})
}

func (t ResponsibleTotals) Get(name string) (money.Amount, bool) {
	for _, e := range t {
		if e.Name == name {
			return e.Amount, true
		}
	}
	return money.Amount{}, false
}

func (t ResponsibleTotals) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

// Top returns up to n entries by descending amount. Ties keep their original
// order.
func (t ResponsibleTotals) Top(n int) ResponsibleTotals {
	sorted := make(ResponsibleTotals, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount.Decimal)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (t ResponsibleTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := e.Amount.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *ResponsibleTotals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("byResponsible: expected object, got %v", tok)
	}

	result := ResponsibleTotals{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("byResponsible: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var amount money.Amount
		if err := amount.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("byResponsible[%q]: %w", name, err)
		}
		result.Add(name, amount)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = result
	return nil
}
