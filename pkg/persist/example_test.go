package persist_test

import (
	"fmt"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/pkg/persist"
)

// Example allocates an area, writes it and reads it back.
func Example() {
	m := eeprom.NewImage(256)
	st, err := persist.New(m, eeprom.Region{Start: 16, End: 256}, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	addr, err := st.Allocate("greeting", 5)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if _, err := st.WriteArea("greeting", []byte("hello")); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	got, _ := st.ReadArea("greeting", 5)
	fmt.Printf("%s at 0x%04X\n", got, addr)
	// Output: hello at 0x0024
}

// ExampleStore_Free shows that a freed cell is reused whole.
func ExampleStore_Free() {
	st, _ := persist.New(eeprom.NewImage(256), eeprom.Region{Start: 0, End: 256}, nil)

	_, _ = st.Allocate("old", 10)
	_, _ = st.Allocate("keep", 1)
	status, _ := st.Free("old")
	fmt.Println(status)

	_, _ = st.Allocate("new", 4)
	n, _ := st.SizeOf("new")
	fmt.Println(n)
	// Output:
	// freed
	// 10
}
