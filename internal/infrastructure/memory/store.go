// Package memory provides an in-process implementation of the repository
// interfaces with the same cascade semantics as the Postgres schema. It backs
// the test suites and is handy for running the API without a database.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	posts    map[int64]*entity.Post
	comments map[int64]*entity.Comment
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		posts:    make(map[int64]*entity.Post),
		comments: make(map[int64]*entity.Comment),
	}
}

func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

// allocID hands out ids from the shared monotonic sequence, mirroring the
// single entities table.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) entityExists(id int64) bool {
	if _, ok := s.posts[id]; ok {
		return true
	}
	_, ok := s.comments[id]
	return ok
}

// removeChildren deletes the comment subtree rooted at the given ids.
func (s *Store) removeChildren(parents []int64) {
	for len(parents) > 0 {
		id := parents[0]
		parents = parents[1:]
		for cid, c := range s.comments {
			if c.ParentID == id {
				delete(s.comments, cid)
				parents = append(parents, cid)
			}
		}
	}
}

type userRepo struct{ s *Store }

func (r userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.Username] = &cp
	return nil
}

func (r userRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) List() ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r userRepo) Update(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.Username]
	if !ok {
		return repository.ErrNotFound
	}
	for name, other := range r.s.users {
		if name != u.Username && other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cur.Email = u.Email
	cur.PasswordHash = u.PasswordHash
	return nil
}

func (r userRepo) Delete(username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[username]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, username)

	var owned []int64
	for id, p := range r.s.posts {
		if p.Author == username {
			delete(r.s.posts, id)
			owned = append(owned, id)
		}
	}
	for id, c := range r.s.comments {
		if c.Author == username {
			delete(r.s.comments, id)
			owned = append(owned, id)
		}
	}
	r.s.removeChildren(owned)
	return nil
}

type postRepo struct{ s *Store }

func (r postRepo) Create(p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.allocID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r postRepo) GetByID(id int64) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	r.s.fillPostEmail(&cp)
	return &cp, nil
}

func (r postRepo) Update(p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title = p.Title
	cur.Body = p.Body
	cur.UpdatedAt = time.Now()
	p.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r postRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	r.s.removeChildren([]int64{id})
	return nil
}

func (r postRepo) ListByUser(username string) ([]*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.s.posts {
		if p.Author == username {
			cp := *p
			r.s.fillPostEmail(&cp)
			out = append(out, &cp)
		}
	}
	sortPosts(out)
	return out, nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.entityExists(c.ParentID) {
		return repository.ErrNotFound
	}
	c.ID = r.s.allocID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r commentRepo) GetByID(id int64) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	r.s.fillCommentEmail(&cp)
	return &cp, nil
}

func (r commentRepo) Update(c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.comments[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Body = c.Body
	cur.UpdatedAt = time.Now()
	c.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r commentRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	r.s.removeChildren([]int64{id})
	return nil
}

func (r commentRepo) ListByUser(username string) ([]*entity.Comment, error) {
	return r.collect(func(c *entity.Comment) bool { return c.Author == username })
}

func (r commentRepo) ListByParent(parentID int64) ([]*entity.Comment, error) {
	return r.collect(func(c *entity.Comment) bool { return c.ParentID == parentID })
}

func (r commentRepo) collect(match func(*entity.Comment) bool) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.s.comments {
		if match(c) {
			cp := *c
			r.s.fillCommentEmail(&cp)
			out = append(out, &cp)
		}
	}
	sortComments(out)
	return out, nil
}

func (s *Store) fillPostEmail(p *entity.Post) {
	if u, ok := s.users[p.Author]; ok {
		p.AuthorEmail = u.Email
	}
}

func (s *Store) fillCommentEmail(c *entity.Comment) {
	if u, ok := s.users[c.Author]; ok {
		c.AuthorEmail = u.Email
	}
}

func sortPosts(ps []*entity.Post) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}

func sortComments(cs []*entity.Comment) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
}
