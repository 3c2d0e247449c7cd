package models

import "strings"

// SystemVariables are the environment variables commonly found on WPKG clients
var SystemVariables = map[string]string{
	"SYSTEMDRIVE": "C:",
	"SOFTWARE":    `C:\Software`,
	"ComSpec":     `C:\Windows\System32\cmd.exe`,
}

// Expand replaces %NAME% references in cmd with package variables first,
// then with the given system variables. Variables scoped to another
// architecture are skipped.
func Expand(cmd string, vars []Variable, arch string, system map[string]string) string {
	for _, v := range vars {
		if v.Architecture != "" && v.Architecture != arch {
			continue
		}
		cmd = strings.ReplaceAll(cmd, "%"+v.Name+"%", v.Value)
	}
	for name, value := range system {
		cmd = strings.ReplaceAll(cmd, "%"+name+"%", value)
	}
	return cmd
}
