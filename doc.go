// Package narrate prepares article content for speech synthesis.
//
// # Quick Start
//
// Create an assembler and assemble a document body:
//
//	asm, err := narrate.NewAssembler(
//	    narrate.WithSettings(narrate.Settings{PrependExcerpt: true}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body := asm.AssembleDocument(narrate.Document{
//	    ID:      "12",
//	    Excerpt: "Hi.",
//	    Content: `<!-- wp:paragraph {"marker":"m1"} --><p>World.</p><!-- /wp:paragraph -->`,
//	})
//	// <div data-narrate-summary="true"><p>Hi.</p></div><p data-narrate-marker="m1">World.</p>
//
// # Assembly Pipeline
//
// The body is built in these stages:
//
//  1. Block selection: top-level blocks, minus those with audioEnabled=false
//  2. Block rendering, then marker injection into each block's first root element
//  3. Concatenation and blank-line removal (plain content is only trimmed)
//  4. The content filter chain, applied once: shortcodes, plus paragraph
//     wrapping for content without block structure
//  5. The summary wrapper built from the excerpt, prepended
//
// Markers are opaque: they are read from the block's "marker" attribute and
// written as data-narrate-marker. They are never generated or validated here.
//
// # Injection Engines
//
// Two engines implement marker injection. The tag-processor engine splices the
// attribute into the original bytes and leaves everything else untouched. The
// DOM engine parses the fragment to find the root element, then splices in
// its re-rendered start tag, so only that tag is normalized. By default the
// engine is chosen once per process by a canary check:
//
//	asm, err := narrate.NewAssembler(narrate.WithEngine(narrate.EngineDOM))
//
// Both engines replace an existing attribute of the same name and write the
// new attribute last, so injecting the same marker twice changes nothing.
//
// # Resolving Documents
//
// Assemble looks documents up through a Resolver. The only error it returns
// for a well-formed request is ErrContentNotFound:
//
//	asm, _ := narrate.NewAssembler(narrate.WithResolver(myStore))
//	body, err := asm.Assemble(ctx, "12")
//	if errors.Is(err, narrate.ErrContentNotFound) {
//	    // unknown id
//	}
//
// # Concurrency
//
// An Assembler holds no per-call state and is safe for concurrent use once
// constructed.
package narrate
