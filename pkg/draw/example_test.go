package draw_test

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/newick"
)

func ExampleDraw() {
	root, _ := newick.Read("(a:1,b:2)r;")
	sizes := draw.StoreSizes(root)

	for p := range draw.Draw(root, sizes, draw.Simple, draw.Options{}) {
		data, _ := json.Marshal(p)
		fmt.Println(string(data))
	}
	// Output:
	// ["l",0,8,1,8]
	// ["l",1,8,1,4]
	// ["l",1,4,2,4]
	// ["l",1,8,1,12]
	// ["l",1,12,3,12]
}

func ExampleLookup() {
	d, err := draw.Lookup("Full")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d)

	_, err = draw.Lookup("Fancy")
	fmt.Println(err)
	// Output:
	// Full(inline=branch-length float=leaf-name)
	// INVALID_DRAWER: unknown drawer "Fancy" (available: Simple, Lengths, LeafNames, Full, Tooltips, Align)
}

func ExampleStoreSizes() {
	root, _ := newick.Read("((B:2,(C:2.5,D:3)E:3.5)A:1)F;")
	sizes := draw.StoreSizes(root)

	fmt.Println(sizes.Content(root), sizes.Children(root), sizes.Node(root))
	// Output:
	// {1 24} {7.5 24} {8.5 24}
}
