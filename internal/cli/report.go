package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// report is what a generator command prints.
type report struct {
	Kind       string            `json:"kind"`
	ID         string            `json:"id"`
	Root       string            `json:"root"`
	Descriptor string            `json:"descriptor"`
	Outputs    map[string]string `json:"outputs"`
	Config     types.Invocation  `json:"config,omitempty"`
	Digest     string            `json:"digest,omitempty"`
}

// finish writes the workspace descriptor and prints the report.
func (a *app) finish(w io.Writer, ws *workspace.Workspace, kind string, r report) error {
	desc, err := ws.Describe(workspace.Descriptor{
		Kind:    kind,
		Outputs: r.Outputs,
		Config:  r.Config,
		Digest:  r.Digest,
	})
	if err != nil {
		return systemError(err)
	}
	r.Kind = kind
	r.ID = ws.ID()
	r.Root = ws.Root()
	r.Descriptor = desc

	a.logger.Info("fixture created", "kind", kind, "root", r.Root)

	if a.flags.jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "%s fixture: %s\n", kind, r.Root)
	keys := make([]string, 0, len(r.Outputs))
	for k := range r.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, r.Outputs[k])
	}
	if r.Digest != "" {
		fmt.Fprintf(w, "digest: %s\n", r.Digest)
	}
	if len(r.Config) > 0 {
		fmt.Fprintf(w, "config: %s\n", r.Config)
	}
	return nil
}
