package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
)

// auditColumns names the SQL expressions each source maps onto the shared filter.
type auditColumns struct {
	phone     string
	body      string
	status    string
	direction string
	ts        string
}

// whereBuilder accumulates conditions with positional arguments. Every "?"
// in a condition refers to the argument added with it.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// addEach binds one argument per "?" in order.
func (w *whereBuilder) addEach(cond string, args ...interface{}) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereBuilder) next() string {
	return fmt.Sprintf("$%d", len(w.args)+1)
}

func buildAuditWhere(filter models.AuditFilter, cols auditColumns) *whereBuilder {
	w := &whereBuilder{}

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		// Formatted numbers such as "(555) 123" match on digits alone.
		if digits := phone.SearchDigits(s); digits != "" {
			w.addEach(fmt.Sprintf(`(%s ILIKE ? OR %s ILIKE ? OR regexp_replace(%s, '\D', '', 'g') LIKE ?)`,
				cols.phone, cols.body, cols.phone), pattern, pattern, "%"+digits+"%")
		} else {
			w.add(fmt.Sprintf("(%s ILIKE ? OR %s ILIKE ?)", cols.phone, cols.body), pattern)
		}
	}
	if filter.Status != "" {
		w.add(cols.status+" = ?", filter.Status)
	}
	if filter.Direction != "" && cols.direction != "" {
		w.add(cols.direction+" = ?", filter.Direction)
	}
	if filter.From != nil {
		w.add(cols.ts+" >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add(cols.ts+" <= ?", *filter.To)
	}

	return w
}

func buildRangeWhere(from, to *time.Time, tsColumn string, base ...string) *whereBuilder {
	w := &whereBuilder{conds: append([]string{}, base...)}
	if from != nil {
		w.add(tsColumn+" >= ?", *from)
	}
	if to != nil {
		w.add(tsColumn+" <= ?", *to)
	}
	return w
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// terminalStatuses is the Postgres array form of models.TerminalStatuses.
func terminalStatuses() interface{} {
	statuses := make([]string, len(models.TerminalStatuses))
	for i, s := range models.TerminalStatuses {
		statuses[i] = string(s)
	}
	return pq.Array(statuses)
}
