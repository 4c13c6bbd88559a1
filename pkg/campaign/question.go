package campaign

import (
	"strconv"
	"strings"
)

// RenderQuestion substitutes the positional placeholders {0}, {1}, ... of the
// question with values. Placeholders without a value are left as they are.
func (d Descriptor) RenderQuestion(values []string) string {
	if d.Question == "" || len(values) == 0 {
		return d.Question
	}
	pairs := make([]string, 0, len(values)*2)
	for i, v := range values {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(d.Question)
}
