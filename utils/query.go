package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/ewm-backend/internal/apierror"
)

// SplitQuery flattens repeated and comma separated query values.
func SplitQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// likeEscaper escapes the LIKE wildcards so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a lower-cased LIKE pattern matching text anywhere.
// Pair it with LowerLike.
func ContainsPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}

// LowerLike is a case-insensitive LIKE condition on column, portable across
// postgres and sqlite, whose argument must come from ContainsPattern.
func LowerLike(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// ParseTimeQuery reads an optional DateTimeLayout query value.
func ParseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDateTime(raw)
	if err != nil {
		return nil, apierror.Validation("Parameter %s must match %q, got %q", key, DateTimeLayout, raw)
	}
	return &t, nil
}

// ParseBoolQuery reads an optional boolean query value.
func ParseBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apierror.Validation("Parameter %s must be true or false, got %q", key, raw)
	}
	return &v, nil
}
