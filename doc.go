// Package slidescene composes declarative slide documents into flat,
// absolutely-positioned scene graphs of drawable primitives.
//
// The input is a per-slide node tree (shapes, pictures, groups, tables,
// charts, diagrams) together with its layout and master template scopes.
// The output is an ordered list of SceneNode values whose transforms are
// fully composed from the slide root, ready to be handed to any 2D drawing
// backend. Package extraction, document parsing and the drawing backend
// itself are external collaborators; this package owns style inheritance,
// coordinate composition, path geometry, text and table layout, and the
// diagram layout language.
package slidescene
