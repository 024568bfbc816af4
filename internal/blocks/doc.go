// Package blocks parses serialized block markup and renders blocks back to HTML.
//
// Serialized documents delimit blocks with HTML comments:
//
//	<!-- wp:paragraph {"marker":"m1"} --><p>Hello</p><!-- /wp:paragraph -->
//	<!-- wp:separator /-->
//
// Markup outside any delimiter becomes a freeform block with an empty name.
// Rendering is the host facility the narration pipeline consumes: static
// blocks render their stored inner content, dynamic blocks are rendered by a
// registered RenderFunc.
package blocks
