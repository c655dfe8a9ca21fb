// Package mqtt connects the overlay daemon to its broker.
//
// Pose samples, capture events, and the retained overlay state go out
// under the poseoverlay/ topic tree so dashboards and recorders can
// follow tracking without touching the debug API; the command topic
// lets them toggle the overlay remotely. The client reconnects on its
// own, replays subscriptions on each new session, and leaves an LWT on
// poseoverlay/system/status so a crashed daemon is distinguishable from
// a stopped one.
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.OverlayCommand(), 1,
//	    func(topic string, payload []byte) error {
//	        return applyCommand(payload)
//	    })
//
// Enable cfg.Broker.TLS for any broker that is not on localhost;
// payloads are not encrypted beyond the transport.
package mqtt
