package mqtt

import "fmt"

// Subscribe registers handler for messages matching topic. Standard MQTT
// wildcards apply: "poseoverlay/pose/+/+" matches every device pose topic.
//
// The subscription survives reconnects; the client re-subscribes on every
// new session. Handlers run on paho goroutines and should return quickly.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if handler == nil {
		return fmt.Errorf("%w: handler cannot be nil", ErrSubscribeFailed)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.subsMu.Lock()
	c.subs[topic] = subscription{qos: qos, handler: handler}
	c.subsMu.Unlock()

	err := waitToken(c.paho.Subscribe(topic, qos, c.wrapHandler(handler)), defaultPublishTimeout, ErrSubscribeFailed)
	if err != nil {
		// Do not replay a subscription that never took.
		c.subsMu.Lock()
		delete(c.subs, topic)
		c.subsMu.Unlock()
		return err
	}

	return nil
}
