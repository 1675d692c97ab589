// SPDX-License-Identifier: MIT

package ccs_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/quiver/ccs"
)

func ExampleCaller_Run() {
	groups, err := ccs.ReadGroups(strings.NewReader("GATTACA\nGATTACA\nGATTACA\nGATACA\n"), ccs.FormatText)
	if err != nil {
		panic(err)
	}
	settings, err := ccs.DefaultSettings()
	if err != nil {
		panic(err)
	}
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	caller, err := ccs.NewCaller(settings, ccs.WithLogger(log))
	if err != nil {
		panic(err)
	}

	err = caller.Run(context.Background(), groups, 2, func(o ccs.Outcome) error {
		if o.Err != nil {
			return o.Err
		}
		fmt.Println(o.Group, o.Result.Sequence)

		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	// Output: group/0 GATTACA
}
