package risk

import "errors"

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrOptionNotFound    = errors.New("option not found")
	ErrDuplicateAnswer   = errors.New("question answered more than once")
	ErrNotModifiable     = errors.New("question is not a modifiable factor")
	ErrInvalidDefinition = errors.New("invalid quiz definition")
	ErrInvalidRange      = errors.New("malformed percentage range")
	ErrNoRiskLevels      = errors.New("quiz has no risk levels")
)

// IsNotFound 计分时引用了问卷中不存在的题目或选项
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound) || errors.Is(err, ErrOptionNotFound)
}
