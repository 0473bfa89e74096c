// SPDX-License-Identifier: MIT

// Package recipe tokenizes the recp dialect: recipes written as plain prose
// annotated with inline semantic markers for ingredients, materials, timers,
// comments, document metadata & an optional trailing backstory.
//
//	>> tags: vegan
//	Boil the {quinoa}(200gr) for t{5 minutes} in a m{pot}. /* keep stirring */
//	---
//	Grandma's recipe.
//
// Parse produces the document's ordered token sequence; rendering the
// sequence strips the markup back to prose, & the extraction helpers pull
// out the structured recipe data without a second pass.
package recipe

import (
	"github.com/sirupsen/logrus"
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }
