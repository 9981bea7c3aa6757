// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

// init right-sizes GOMAXPROCS to the host's cgroup CPU quota. This only
// matters for processes embedding the store under a container CPU limit;
// it is a no-op (and logs nothing but a debug line) everywhere else.
func init() {
	log := discardLogger()
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debugf(format, args...)
	})); err != nil {
		logrus.WithError(err).Debug("eavg: maxprocs.Set failed, leaving GOMAXPROCS untouched")
	}
}
