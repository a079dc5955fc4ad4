package common

const (
	ProgramName    = "msg2html"
	ProgramVersion = "0.3.0"
)
