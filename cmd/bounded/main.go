// Command bounded checks, dimensions and samples schema documents (JSON
// Schema, OpenAPI components, Kubernetes CRDs).
package main

import (
	"github.com/reoring/bounded/cmd"
)

func main() {
	cmd.Execute()
}
