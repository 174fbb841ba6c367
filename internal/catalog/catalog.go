// Package catalog holds the school reference records and resolves timetable
// entries into display cards.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Catalog errors.
var (
	ErrInvalidRecord = errors.New("invalid catalog record")
	ErrInvalidColor  = errors.New("color must be a #rrggbb hex value")
)

// Subject is a taught subject.
type Subject struct {
	ID    int64  `csv:"id" json:"id"`
	Name  string `csv:"name" json:"name"`
	Code  string `csv:"code" json:"code"`
	Color string `csv:"color" json:"color"` // "#rrggbb"
}

// Teacher is a member of the teaching staff.
type Teacher struct {
	ID        int64  `csv:"id" json:"id"`
	FirstName string `csv:"first_name" json:"first_name"`
	LastName  string `csv:"last_name" json:"last_name"`
	Email     string `csv:"email" json:"email"`
}

// FullName returns "First Last", trimmed.
func (t Teacher) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// Class is a group of students following the same timetable.
type Class struct {
	ID    int64  `csv:"id" json:"id"`
	Name  string `csv:"name" json:"name"`
	Level string `csv:"level" json:"level"`
}

// Room is a physical room, keyed by its code.
type Room struct {
	Code     string `csv:"code" json:"code"`
	Name     string `csv:"name" json:"name"`
	Capacity int    `csv:"capacity" json:"capacity"`
}

// Student belongs to one class.
type Student struct {
	ID        int64  `csv:"id" json:"id"`
	FirstName string `csv:"first_name" json:"first_name"`
	LastName  string `csv:"last_name" json:"last_name"`
	ClassID   int64  `csv:"class_id" json:"class_id"`
}

// FullName returns "First Last", trimmed.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Parent is the guardian of one or more students.
type Parent struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	ChildIDs  []int64 `json:"child_ids"`
}

// FullName returns "First Last", trimmed.
func (p Parent) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasChild reports whether studentID is one of the parent's children.
func (p Parent) HasChild(studentID int64) bool {
	for _, id := range p.ChildIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// Data is the raw content of every catalog.
type Data struct {
	Subjects []Subject `json:"subjects"`
	Teachers []Teacher `json:"teachers"`
	Classes  []Class   `json:"classes"`
	Rooms    []Room    `json:"rooms"`
	Students []Student `json:"students"`
	Parents  []Parent  `json:"parents"`
}

// Catalogs is a read-only, indexed snapshot of Data.
// The zero value and a nil *Catalogs are empty catalogs.
type Catalogs struct {
	data     Data
	subjects map[int64]Subject
	teachers map[int64]Teacher
	classes  map[int64]Class
	rooms    map[string]Room
	students map[int64]Student
	parents  map[int64]Parent
}

// New indexes d. Later records win over earlier ones with the same key.
func New(d Data) *Catalogs {
	c := &Catalogs{
		subjects: make(map[int64]Subject, len(d.Subjects)),
		teachers: make(map[int64]Teacher, len(d.Teachers)),
		classes:  make(map[int64]Class, len(d.Classes)),
		rooms:    make(map[string]Room, len(d.Rooms)),
		students: make(map[int64]Student, len(d.Students)),
		parents:  make(map[int64]Parent, len(d.Parents)),
	}
	for _, s := range d.Subjects {
		c.subjects[s.ID] = s
	}
	for _, t := range d.Teachers {
		c.teachers[t.ID] = t
	}
	for _, cl := range d.Classes {
		c.classes[cl.ID] = cl
	}
	for _, r := range d.Rooms {
		c.rooms[roomKey(r.Code)] = r
	}
	for _, s := range d.Students {
		c.students[s.ID] = s
	}
	for _, p := range d.Parents {
		c.parents[p.ID] = p
	}
	c.data = Data{
		Subjects: sortedValues(c.subjects, func(s Subject) int64 { return s.ID }),
		Teachers: sortedValues(c.teachers, func(t Teacher) int64 { return t.ID }),
		Classes:  sortedValues(c.classes, func(cl Class) int64 { return cl.ID }),
		Students: sortedValues(c.students, func(s Student) int64 { return s.ID }),
		Parents:  sortedValues(c.parents, func(p Parent) int64 { return p.ID }),
	}
	for _, r := range c.rooms {
		c.data.Rooms = append(c.data.Rooms, r)
	}
	sort.Slice(c.data.Rooms, func(i, j int) bool { return c.data.Rooms[i].Code < c.data.Rooms[j].Code })
	return c
}

func sortedValues[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

func roomKey(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Subject looks up a subject by ID.
func (c *Catalogs) Subject(id int64) (Subject, bool) {
	if c == nil {
		return Subject{}, false
	}
	s, ok := c.subjects[id]
	return s, ok
}

// Teacher looks up a teacher by ID.
func (c *Catalogs) Teacher(id int64) (Teacher, bool) {
	if c == nil {
		return Teacher{}, false
	}
	t, ok := c.teachers[id]
	return t, ok
}

// Class looks up a class by ID.
func (c *Catalogs) Class(id int64) (Class, bool) {
	if c == nil {
		return Class{}, false
	}
	cl, ok := c.classes[id]
	return cl, ok
}

// Room looks up a room by code, ignoring case.
func (c *Catalogs) Room(code string) (Room, bool) {
	if c == nil {
		return Room{}, false
	}
	r, ok := c.rooms[roomKey(code)]
	return r, ok
}

// Student looks up a student by ID.
func (c *Catalogs) Student(id int64) (Student, bool) {
	if c == nil {
		return Student{}, false
	}
	s, ok := c.students[id]
	return s, ok
}

// Parent looks up a parent by ID.
func (c *Catalogs) Parent(id int64) (Parent, bool) {
	if c == nil {
		return Parent{}, false
	}
	p, ok := c.parents[id]
	return p, ok
}

// Data returns every record ordered by key.
func (c *Catalogs) Data() Data {
	if c == nil {
		return Data{}
	}
	return c.data
}

// Store persists catalog records.
type Store interface {
	SaveSubject(ctx context.Context, s *Subject) error
	SaveTeacher(ctx context.Context, t *Teacher) error
	SaveClass(ctx context.Context, c *Class) error
	SaveRoom(ctx context.Context, r *Room) error
	SaveStudent(ctx context.Context, s *Student) error
	SaveParent(ctx context.Context, p *Parent) error

	// LoadCatalogs reads every record into a snapshot.
	LoadCatalogs(ctx context.Context) (*Catalogs, error)
}
