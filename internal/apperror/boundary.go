package apperror

import (
	"context"
	"fmt"
)

// Wrap возвращает операцию с той же сигнатурой, которая сообщает о своей
// ошибке в журнал ровно один раз и возвращает ту же ошибку вызывающему.
// Паника тоже попадает в журнал и пробрасывается дальше без изменений.
func Wrap[T any](r Reporter, label string, op func() (T, error)) func() (T, error) {
	return func() (T, error) {
		reported := false
		defer func() {
			if p := recover(); p != nil {
				if !reported {
					r.HandleError(panicError(p), label)
				}
				panic(p)
			}
		}()

		result, err := op()
		if err != nil {
			reported = true
			r.HandleError(err, label)
		}
		return result, err
	}
}

// Future - результат операции, выполняемой в отдельной горутине
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Await ждет завершения операции
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// Done закрывается, когда результат готов
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// WrapAsync - граница для асинхронных операций. Ошибка или паника внутри
// горутины попадает в журнал один раз и возвращается через Await;
// паника при этом превращается в ошибку, так как между горутинами ее не пробросить.
func WrapAsync[T any](r Reporter, label string, op func(context.Context) (T, error)) func(context.Context) *Future[T] {
	return func(ctx context.Context) *Future[T] {
		f := &Future[T]{done: make(chan struct{})}

		go func() {
			reported := false
			defer close(f.done)
			defer func() {
				if p := recover(); p != nil {
					f.err = panicError(p)
					if !reported {
						r.HandleError(f.err, label)
					}
				}
			}()

			value, err := op(ctx)
			f.value, f.err = value, err
			if err != nil {
				reported = true
				r.HandleError(err, label)
			}
		}()

		return f
	}
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}
