package i18n

// Message identifiers. Every identifier must exist in each active.*.toml
// catalog.
const (
	MsgLocaleZH               = "LocaleZH"
	MsgLocaleEN               = "LocaleEN"
	MsgUsingConfigDir         = "UsingConfigDir"
	MsgUsingConfigFile        = "UsingConfigFile"
	MsgUsingSampleDir         = "UsingSampleDir"
	MsgGeneratedFromDir       = "GeneratedFromDir"
	MsgGeneratedFromFile      = "GeneratedFromFile"
	MsgGeneratedFromSamples   = "GeneratedFromSamples"
	MsgOutputFile             = "OutputFile"
	MsgDryRunNotWritten       = "DryRunNotWritten"
	MsgConfirmOverwrite       = "ConfirmOverwrite"
	MsgAborted                = "Aborted"
	MsgErrMissingContent      = "ErrMissingContent"
	MsgErrMissingTemplate     = "ErrMissingTemplate"
	MsgErrMissingInput        = "ErrMissingInput"
	MsgErrProcessDir          = "ErrProcessDir"
	MsgErrProcessFile         = "ErrProcessFile"
	MsgErrProcess             = "ErrProcess"
	MsgErrInvalidKey          = "ErrInvalidKey"
	MsgWarnPlaceholderMissing = "WarnPlaceholderMissing"
	MsgWarnConfigIgnored      = "WarnConfigIgnored"
	MsgSplitSaved             = "SplitSaved"
	MsgSplitUnsplit           = "SplitUnsplit"
	MsgSplitExtra             = "SplitExtra"
	MsgInitWrote              = "InitWrote"
	MsgInitSkipped            = "InitSkipped"
)

// AllMessages lists every identifier above.
var AllMessages = []string{
	MsgLocaleZH, MsgLocaleEN,
	MsgUsingConfigDir, MsgUsingConfigFile, MsgUsingSampleDir,
	MsgGeneratedFromDir, MsgGeneratedFromFile, MsgGeneratedFromSamples,
	MsgOutputFile, MsgDryRunNotWritten, MsgConfirmOverwrite, MsgAborted,
	MsgErrMissingContent, MsgErrMissingTemplate, MsgErrMissingInput,
	MsgErrProcessDir, MsgErrProcessFile, MsgErrProcess, MsgErrInvalidKey,
	MsgWarnPlaceholderMissing, MsgWarnConfigIgnored,
	MsgSplitSaved, MsgSplitUnsplit, MsgSplitExtra,
	MsgInitWrote, MsgInitSkipped,
}
