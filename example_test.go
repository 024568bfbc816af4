package narrate_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	narrate "github.com/alnah/go-narrate"
)

// Example assembles a block document with a summary.
func Example() {
	asm, err := narrate.NewAssembler(
		narrate.WithSettings(narrate.Settings{PrependExcerpt: true}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	body := asm.AssembleDocument(narrate.Document{
		ID:      "12",
		Excerpt: "Hi.",
		Content: `<!-- wp:paragraph {"audioEnabled":false} --><p>Skipped.</p><!-- /wp:paragraph -->` +
			`<!-- wp:paragraph {"marker":"m1"} --><p>World.</p><!-- /wp:paragraph -->`,
	})
	fmt.Println(body)
	// Output: <div data-narrate-summary="true"><p>Hi.</p></div><p data-narrate-marker="m1">World.</p>
}

// Example_shortcodes expands a static shortcode in plain content.
func Example_shortcodes() {
	asm, err := narrate.NewAssembler(narrate.WithStaticShortcode("brand", "ACME"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(asm.AssembleDocument(narrate.Document{Content: "Made by [brand]."}))
	// Output: <p>Made by ACME.</p>
}

// Example_resolver assembles documents by id.
func Example_resolver() {
	docs := resolverFunc(func(_ context.Context, id string) (narrate.Document, error) {
		if id != "12" {
			return narrate.Document{}, narrate.ErrContentNotFound
		}
		return narrate.Document{ID: id, Content: "  Hello.  "}, nil
	})

	asm, err := narrate.NewAssembler(
		narrate.WithResolver(docs),
		narrate.WithContentFilters(), // identity chain
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	body, err := asm.Assemble(context.Background(), "12")
	fmt.Printf("%q %v\n", body, err)

	_, err = asm.Assemble(context.Background(), "404")
	fmt.Println(errors.Is(err, narrate.ErrContentNotFound))
	// Output:
	// "Hello." <nil>
	// true
}

// Example_payload builds the request payload for a published document.
func Example_payload() {
	asm, err := narrate.NewAssembler(
		narrate.WithEngine(narrate.EngineTagProcessor),
		narrate.WithSettings(narrate.Settings{BodyVoiceID: narrate.IntPtr(2)}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	p := asm.BuildPayload(narrate.Document{
		ID:      "12",
		Title:   "Hello",
		Status:  narrate.StatusPublished,
		Content: `<!-- wp:heading {"marker":"h1"} --><h2>Hello</h2><!-- /wp:heading -->`,
	})

	data, err := p.MarshalIndent()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.ReplaceAll(string(data), `\"`, `'`))
	// Output:
	// {
	//   "type": "article",
	//   "title": "Hello",
	//   "body": "<h2 data-narrate-marker='h1'>Hello</h2>",
	//   "source_id": "12",
	//   "published": true,
	//   "body_voice_id": 2
	// }
}

type resolverFunc func(ctx context.Context, id string) (narrate.Document, error)

func (f resolverFunc) Document(ctx context.Context, id string) (narrate.Document, error) {
	return f(ctx, id)
}
