// Command hqlc compiles HQL source to JavaScript.
package main

import (
	"os"

	"github.com/hqlc/hql/cmd/hqlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
