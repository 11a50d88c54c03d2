package prompts

import _ "embed"

//go:embed system_max.pt.txt
var systemMax string

func SystemMax() string { return systemMax }
