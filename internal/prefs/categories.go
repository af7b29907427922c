package prefs

import "slices"

// IncomeCategories returns a copy of the income category list.
func (s *Store) IncomeCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.IncomeCategories)
}

// ExpenseCategories returns a copy of the expense category list.
func (s *Store) ExpenseCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.ExpenseCategories)
}

// AddIncomeCategory appends a category. Empty names and duplicates are
// ignored without error.
func (s *Store) AddIncomeCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || slices.Contains(s.data.IncomeCategories, name) {
		return nil
	}
	s.data.IncomeCategories = append(s.data.IncomeCategories, name)
	return s.save()
}

// RemoveIncomeCategory removes a category by name.
func (s *Store) RemoveIncomeCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.IncomeCategories = slices.DeleteFunc(s.data.IncomeCategories, func(c string) bool { return c == name })
	return s.save()
}

// AddExpenseCategory appends a category. Empty names and duplicates are
// ignored without error.
func (s *Store) AddExpenseCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || slices.Contains(s.data.ExpenseCategories, name) {
		return nil
	}
	s.data.ExpenseCategories = append(s.data.ExpenseCategories, name)
	return s.save()
}

// RemoveExpenseCategory removes a category by name.
func (s *Store) RemoveExpenseCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ExpenseCategories = slices.DeleteFunc(s.data.ExpenseCategories, func(c string) bool { return c == name })
	return s.save()
}
