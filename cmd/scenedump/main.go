// Command scenedump composes a built-in sample slide and prints the
// resulting scene graph as JSON. It exercises the full pipeline without
// needing a presentation package on disk.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	slidescene "github.com/VantageDataChat/GoSlideScene"
)

func main() {
	ctx := sampleSlide()

	composer := &slidescene.Composer{
		Measurer: &slidescene.HeuristicMeasurer{},
	}
	scene, err := composer.ComposeSlide(context.Background(), ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compose: %v\n", err)
		os.Exit(1)
	}

	dump := struct {
		Background *slidescene.Background
		Nodes      []slidescene.SceneNode
	}{scene.Background, scene.Nodes}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}

func sampleSlide() *slidescene.SlideContext {
	inch := int64(914400)
	size := func(v float64) *float64 { return &v }

	title := &slidescene.Node{
		Kind:        slidescene.NodeShape,
		Name:        "Title 1",
		Placeholder: &slidescene.PlaceholderRef{Type: "title"},
		Transform: &slidescene.TransformDef{
			OffsetX: inch / 2, OffsetY: inch / 2,
			ExtentX: 9 * inch, ExtentY: inch,
		},
		Geometry: &slidescene.GeometryDef{Preset: "rect"},
		Body: &slidescene.TextBody{
			Paragraphs: []*slidescene.ParagraphDef{{
				Props: &slidescene.ParagraphProps{
					Align:  slidescene.AlignCenter,
					DefRPr: &slidescene.RunProps{Size: size(44)},
				},
				Elements: []slidescene.ParagraphElement{
					&slidescene.RunDef{Text: "Scene Graph Demo"},
				},
			}},
		},
	}

	bullet := &slidescene.Node{
		Kind: slidescene.NodeShape,
		Name: "Content 2",
		Transform: &slidescene.TransformDef{
			OffsetX: inch, OffsetY: 2 * inch,
			ExtentX: 8 * inch, ExtentY: 3 * inch,
		},
		Body: &slidescene.TextBody{
			Paragraphs: []*slidescene.ParagraphDef{
				{
					Props: &slidescene.ParagraphProps{
						Bullet: &slidescene.BulletDef{
							Kind:   slidescene.BulletAutoNum,
							Scheme: "arabicPeriod",
						},
					},
					Elements: []slidescene.ParagraphElement{
						&slidescene.RunDef{Text: "First point"},
					},
				},
				{
					Props: &slidescene.ParagraphProps{
						Bullet: &slidescene.BulletDef{
							Kind:   slidescene.BulletAutoNum,
							Scheme: "arabicPeriod",
						},
					},
					Elements: []slidescene.ParagraphElement{
						&slidescene.RunDef{Text: "Second point"},
					},
				},
			},
		},
	}

	fill := slidescene.NewFill().SetSolid(slidescene.NewColor("1F4E79"))
	return &slidescene.SlideContext{
		Ordinal: 1,
		Slide: &slidescene.SlideDocument{
			Nodes:            []*slidescene.Node{title, bullet},
			ShowMasterShapes: true,
		},
		Master: &slidescene.Scope{
			Name:       "master",
			Background: &slidescene.Background{Kind: slidescene.BackgroundColor, Fill: fill},
		},
		WidthEMU:  10 * inch,
		HeightEMU: 7*inch + inch/2,
	}
}
