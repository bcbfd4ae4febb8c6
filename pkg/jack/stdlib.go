package jack

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed stdlib.json
var stdlibABI string

// StandardLibraryABI holds the eight built-in OS classes' subroutine
// signatures (no bodies: just Name/Return/Arguments/Type), embedded at
// build time from stdlib.json, keyed by class name. It lets the
// --stdlib flag resolve calls into Math, String, Array, Output, Screen,
// Keyboard, Memory and Sys without their source being part of the
// compiler's input set.
var StandardLibraryABI = map[string]Class{}

func init() {
	if err := json.Unmarshal([]byte(stdlibABI), &StandardLibraryABI); err != nil {
		panic(fmt.Sprintf("jack: embedded stdlib.json is malformed: %s", err))
	}
}
