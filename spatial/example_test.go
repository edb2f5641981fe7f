// SPDX-License-Identifier: EPL-2.0

package spatial_test

import (
	"fmt"

	"github.com/ik5/sndcore/spatial"
)

// Example_attenuation prints the falloff curve of the default range.
func Example_attenuation() {
	for _, d := range []float32{0, 1, 25.5, 50, 80} {
		g := spatial.Attenuation(d, spatial.DefaultInnerRadius, spatial.DefaultOuterRadius, spatial.DefaultRolloff)
		fmt.Printf("distance %4.1f: %.2f\n", d, g)
	}
	// Output:
	// distance  0.0: 1.00
	// distance  1.0: 1.00
	// distance 25.5: 0.50
	// distance 50.0: 0.00
	// distance 80.0: 0.00
}

// Example_listenerAxes shows the axes of an unrotated listener.
func Example_listenerAxes() {
	l := spatial.NewListener()

	fmt.Println("front:", l.Front())
	fmt.Println("up:", l.Up())
	// Output:
	// front: [0 -1 0]
	// up: [0 0 -1]
}
