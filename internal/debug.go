package internal

import (
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

var (
	sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)
	configPrefixes = []string{"EXPANDER_", "GIN_"}
)

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

// EnvironmentVars logs the environment variables that influence this program.
func EnvironmentVars() {
	log.Println("Environment variables")
	for _, line := range configEnviron(os.Environ()) {
		log.Printf("  %s\n", line)
	}
}

func configEnviron(environ []string) []string {
	lines := make([]string, 0, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if !hasConfigPrefix(key) {
			continue
		}
		if sensitiveRegex.MatchString(key) {
			value = "********"
		}
		lines = append(lines, key+": "+value)
	}
	sort.Strings(lines)
	return lines
}

func hasConfigPrefix(key string) bool {
	for _, prefix := range configPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
