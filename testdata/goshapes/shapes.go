package goshapes

import "time"

type Base struct {
	ID   int
	Name string
}

type Leash struct {
	Length float64
}

type Dog struct {
	Base
	Owner   *Owner
	leash   Leash
	Tags    []string
	Visited map[string]time.Time
}

type Owner struct {
	Dogs []*Dog
}

func (d *Dog) Walk(with *Owner, minutes int) error {
	return nil
}

func (d Dog) Bark() {}

func (o *Owner) Adopt(dogs ...Dog) (int, error) {
	return len(dogs), nil
}

type Celsius float64
