// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import "fmt"

// Semantic is a semantic version.
type Semantic struct {
	Major int
	Minor int
	Patch int
}

func (s Semantic) String() string {
	return fmt.Sprintf("v%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// Current is the version of this build.
var Current = Semantic{
	Major: 1,
	Minor: 0,
	Patch: 0,
}

// GitCommit is set through ldflags at build time.
var GitCommit string

// String is the version line printed by the version flag.
func String() string {
	if GitCommit == "" {
		return Current.String()
	}
	return fmt.Sprintf("%s [commit %s]", Current, GitCommit)
}
