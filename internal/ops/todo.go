package ops

import (
	"strconv"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// TodoSummary counts to-do items.
type TodoSummary struct {
	Total     int
	Completed int
}

// AddTodo adds an open to-do item. Surrounding whitespace is dropped.
func (s *Services) AddTodo(text string) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if err := s.checkForm("todo", TodoInput{Text: text}); err != nil {
		return nil, err
	}

	id := s.ids.Next()
	for s.Todos.Has(model.FormatID(id)) {
		id = s.ids.Next()
	}
	t := model.Todo{ID: id, Text: text}
	if err := s.Todos.Add(t); err != nil {
		return nil, err
	}
	return &t, nil
}

// EditTodo replaces the text of a to-do item.
func (s *Services) EditTodo(id int64, text string) (*model.Todo, error) {
	t, err := s.FindTodo(id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := s.checkForm("todo", TodoInput{Text: text}); err != nil {
		return nil, err
	}

	t.Text = text
	if err := s.Todos.Update(*t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleTodo flips the completed flag of a to-do item.
func (s *Services) ToggleTodo(id int64) (*model.Todo, error) {
	t, err := s.FindTodo(id)
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	if err := s.Todos.Update(*t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTodo removes a to-do item.
func (s *Services) DeleteTodo(id int64) (*model.Todo, error) {
	t, err := s.Todos.Remove(model.FormatID(id))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTodo returns a copy of the to-do item with the given ID.
func (s *Services) FindTodo(id int64) (*model.Todo, error) {
	t, ok := s.Todos.Find(model.FormatID(id))
	if !ok {
		return nil, &collection.NotFoundError{Kind: "todo", ID: strconv.FormatInt(id, 10)}
	}
	return &t, nil
}

// TodoQuery keeps insertion order, optionally only the open items.
func TodoQuery(openOnly bool) collection.Query[model.Todo] {
	q := collection.Query[model.Todo]{}
	if openOnly {
		q = q.Where(func(t *model.Todo) bool { return !t.Completed })
	}
	return q
}

// ListTodos returns the to-do items in insertion order, optionally only the
// open ones.
func (s *Services) ListTodos(openOnly bool) []model.Todo {
	return TodoQuery(openOnly).Apply(s.Todos.Items())
}

// TodoSummary counts all and completed to-do items.
func (s *Services) TodoSummary() TodoSummary {
	var sum TodoSummary
	for _, t := range s.Todos.Items() {
		sum.Total++
		if t.Completed {
			sum.Completed++
		}
	}
	return sum
}
