package converse_test

import (
	"context"
	"fmt"
	"log"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/pkg/dsl"
)

// Example demonstrates building a flow with the fluent builder and walking
// it answer by answer.
func Example() {
	def, err := dsl.NewFlow("mood-check", "Mood Check").
		Start("s").
		Question("ask", "How are you today?", "mood").
		Condition("c", dsl.RuleEquals("mood", "good")).
		End("happy", "Glad to hear it!").
		End("sad", "Hope tomorrow is better.").
		Edge("s", "ask").
		Edge("ask", "c").
		BranchTrue("c", "happy").
		BranchFalse("c", "sad").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := converse.New(def)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	res, err := eng.Initialize(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Messages[0].Content)

	res, err = eng.ProcessUserResponse(ctx, res.State, "good")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Messages[len(res.Messages)-1].Content)

	// Output:
	// How are you today?
	// Glad to hear it!
}
