package testtypes

import (
	"context"
	"reflect"
	"sync/atomic"

	"github.com/sectrean/svcrepo/internal/errors"
)

var (
	TypeDummyService     = reflect.TypeFor[DummyService]()
	TypeDummyServiceImpl = reflect.TypeFor[*DummyServiceImpl]()
	TypeOtherService     = reflect.TypeFor[OtherService]()
)

var ErrCloseFailed = errors.New("close failed")

type DummyService interface {
	Arg1() string
	Arg2() int
	Arg3() string
	Arg4() bool
	IsClosed() bool
}

type OtherService interface {
	Other()
}

type DummyServiceImpl struct {
	arg1   string
	arg2   int
	arg3   string
	arg4   bool
	closed atomic.Bool
}

func NewDummy() *DummyServiceImpl {
	return newDummy("no0arg", 0, "no0arg", false)
}

func NewDummy1(arg1 string) *DummyServiceImpl {
	return newDummy(arg1, 0, "no1arg", false)
}

func NewDummy3(arg1 string, arg2 int, arg3 string) *DummyServiceImpl {
	return newDummy(arg1, arg2, arg3, false)
}

func newDummy(arg1 string, arg2 int, arg3 string, arg4 bool) *DummyServiceImpl {
	return &DummyServiceImpl{
		arg1: arg1,
		arg2: arg2,
		arg3: arg3,
		arg4: arg4,
	}
}

func (s *DummyServiceImpl) Arg1() string   { return s.arg1 }
func (s *DummyServiceImpl) Arg2() int      { return s.arg2 }
func (s *DummyServiceImpl) Arg3() string   { return s.arg3 }
func (s *DummyServiceImpl) Arg4() bool     { return s.arg4 }
func (s *DummyServiceImpl) IsClosed() bool { return s.closed.Load() }

func (s *DummyServiceImpl) Close() error {
	s.closed.Store(true)
	return nil
}

// FailingCloser fails every Close call.
type FailingCloser struct {
	DummyServiceImpl
}

func NewFailingCloser() *FailingCloser {
	return &FailingCloser{}
}

func (s *FailingCloser) Close(context.Context) error {
	s.closed.Store(true)
	return ErrCloseFailed
}

// Plain implements DummyService without any Close method.
type Plain struct {
	Value string
}

func (Plain) Arg1() string   { return "plain" }
func (Plain) Arg2() int      { return 0 }
func (Plain) Arg3() string   { return "plain" }
func (Plain) Arg4() bool     { return false }
func (Plain) IsClosed() bool { return false }

type Other struct{}

func (*Other) Other() {}

// Port is a named basic type used to check named/unnamed argument matching.
type Port int

type Server struct {
	Host string
	Port Port
}

func NewServer(host string, port Port) *Server {
	return &Server{Host: host, Port: port}
}
