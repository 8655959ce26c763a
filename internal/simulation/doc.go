// Package simulation provides a multi-turn test harness for validating
// emergent dynamics of the conversation engine.
//
// The simulation exercises the real perception, dynamics, arbitration
// and generation pipeline — no mocks. Scenarios are Go builders that
// construct small brains (graph plus lexicon) and run scripted
// conversations, capturing per-turn outcomes for property-based
// assertions.
//
// Each test gets an isolated episodic store; persistent scenarios use a
// SQLite database under t.TempDir().
//
// Usage:
//
//	func TestGreetingSurfaces(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:   "greeting",
//	        Nodes:  []simulation.NodeSpec{...},
//	        Edges:  []simulation.EdgeSpec{...},
//	        Words:  []simulation.WordSpec{...},
//	        Inputs: []string{"hello", "hello again"},
//	        Seed:   1,
//	    })
//	    simulation.AssertNodeFires(t, result, 0, "c_greeting")
//	}
package simulation
