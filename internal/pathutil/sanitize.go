package pathutil

import (
	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

// Names are the stage naming components after sanitization.
type Names struct {
	Delimiter  string
	Prefix     string
	LastSuffix string
}

// Sanitize replaces unusable naming components with defaults and logs a
// warning for each substitution. It never fails and is idempotent.
//
// Components are checked one by one, so the composed folder names can still
// be invalid ("NU" + "" + "L"); the planned folders must be validated again.
func (v *Validator) Sanitize(delimiter, prefix, lastSuffix string) Names {
	names := Names{Delimiter: delimiter, Prefix: prefix, LastSuffix: lastSuffix}

	// An empty delimiter is allowed and simply glues prefix and number.
	if delimiter != "" && (illegalNameChars.MatchString(delimiter) || reservedName.MatchString(delimiter)) {
		v.substituted("delimiter", delimiter, constants.DefaultStageVersionDelimiter)
		names.Delimiter = constants.DefaultStageVersionDelimiter
	}
	if code := componentCode(prefix); code != errcode.Success {
		v.substituted("prefix", prefix, constants.DefaultStageNamePrefix, logger.Field{Key: "reason", Value: code.String()})
		names.Prefix = constants.DefaultStageNamePrefix
	}
	if code := componentCode(lastSuffix); code != errcode.Success {
		v.substituted("last suffix", lastSuffix, constants.DefaultStageLastNameSuffix, logger.Field{Key: "reason", Value: code.String()})
		names.LastSuffix = constants.DefaultStageLastNameSuffix
	}
	return names
}

func (v *Validator) substituted(what, invalid, replacement string, extra ...logger.Field) {
	fields := append([]logger.Field{
		{Key: "invalid", Value: invalid},
		{Key: "replacement", Value: replacement},
	}, extra...)
	v.log.Warn("invalid stage "+what+" replaced", fields...)
}
