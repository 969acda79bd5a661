// Buildtags prints the build tags for the current build environment.
//
// The updater tag is added when the signing key is present.
// Only the presence of the key is checked, its value is never printed.
//
// Usage:
//
//	go build -tags "$(go run ./tools/buildtags)" .
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/opencode-ai/desktop/internal/constants"
)

var extraFlag = flag.String("extra", "", "comma separated list of additional tags")

func main() {
	flag.Parse()
	fmt.Println(strings.Join(buildTags(os.LookupEnv, *extraFlag), ","))
}

func buildTags(lookupEnv func(string) (string, bool), extra string) []string {
	var tags []string
	for t := range strings.SplitSeq(extra, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if v, ok := lookupEnv(constants.SigningKeyEnv); ok && v != "" {
		tags = append(tags, constants.UpdaterTag)
	}
	return tags
}
