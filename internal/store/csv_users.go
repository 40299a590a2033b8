package store

// AppendUser adds one row to the users table. Uniqueness is not checked
// here; the sign-up flow pre-checks via Credentials before appending.
func (s *CSV) AppendUser(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendRows(tableUsers, [][]string{{username, password}})
}

// Credentials returns every users-table record in file order.
func (s *CSV) Credentials() ([]Credential, error) {
	rows, err := s.readAll(tableUsers)
	if err != nil {
		return nil, err
	}
	var creds []Credential
	for i, row := range dataRows(tableUsers, rows) {
		c, err := decodeCredential(row, i+1)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, nil
}
