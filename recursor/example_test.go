// SPDX-License-Identifier: MIT

package recursor_test

import (
	"fmt"

	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/recursor"
	"github.com/katalvlaran/quiver/sequence"
)

// ExampleBanded_Alignment fills a Viterbi matrix for a read that lost one
// base of a homopolymer and prints the recovered alignment.
//
//	template  GATT
//	read      GAT
//
// With Merge enabled the missing T is explained by a merge (score −2)
// instead of a deletion (−4).
func ExampleBanded_Alignment() {
	params, _ := model.NewQvParams("demo", "qv",
		0, -10, -0.1, -5, -0.1, -4, -6, -0.1, -8, -0.1, -2)
	read, _ := sequence.NewQvFeatures("GAT", sequence.QvChannels{})
	em, _ := recursor.NewQvModel(read, params)

	r, err := recursor.New(em,
		recursor.WithMoves(model.AllMoves),
		recursor.WithCombiner(recursor.Viterbi))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	tpl := sequence.MustParse("GATT")
	m, err := r.FillAll(tpl)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	aln, _ := r.Alignment(m, tpl)

	fmt.Println(recursor.Score(m))
	fmt.Println(aln)

	// Output:
	// -2
	// GATT
	// GA-T
	// MMNM
}
