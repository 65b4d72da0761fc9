package broadcastlog_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aradilov/broadcastlog"
)

func Example() {
	l := broadcastlog.New[uint64](100)
	l.Push(1)
	l.Push(2)

	v, ok := l.Get(1)
	fmt.Println(v, ok)
	_, ok = l.Get(2)
	fmt.Println(ok)
	fmt.Println(l.Len(), l.Capacity())
	// Output:
	// 2 true
	// false
	// 2 100
}

func ExampleLog_Push() {
	l := broadcastlog.New[string](1)

	pos, err := l.Push("first")
	fmt.Println(pos, err)

	_, err = l.Push("second")
	fmt.Println(errors.Is(err, broadcastlog.ErrFull))
	// Output:
	// 0 <nil>
	// true
}

func ExampleLog_All() {
	l := broadcastlog.New[string](4)
	l.Push("a")
	l.Push("b")

	for i, v := range l.All() {
		fmt.Println(i, v)
	}
	// Output:
	// 0 a
	// 1 b
}

func ExampleLog_Wait() {
	l := broadcastlog.New[int](4)

	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Push(42)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := l.Wait(ctx, 0)
	fmt.Println(v, err)
	// Output:
	// 42 <nil>
}

func ExampleOpen() {
	tx, rx := broadcastlog.Open[string](2)
	tx.Send("hello")

	v, ok := rx.Recv(0)
	fmt.Println(v, ok)
	// Output:
	// hello true
}
